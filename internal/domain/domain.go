// Package domain re-exports the persisted models and projections so call
// sites can import one package as "types".
package domain

import (
	"github.com/andora-ai/andora-backend/internal/domain/brand"
	"github.com/andora-ai/andora-backend/internal/domain/knowledge"
	"github.com/andora-ai/andora-backend/internal/domain/story"
)

type (
	Brand                 = brand.Brand
	Character             = brand.Character
	CharacterRelationship = brand.CharacterRelationship
	CalendarEvent         = brand.CalendarEvent

	MonthlyTheme  = story.MonthlyTheme
	WeeklySubplot = story.WeeklySubplot
	NextSceneHook = story.NextSceneHook
	ContentItem   = story.ContentItem

	KnowledgeDocument = knowledge.KnowledgeDocument

	BrandIdentity              = story.BrandIdentity
	CharacterBrief             = story.CharacterBrief
	RelationshipContext        = story.RelationshipContext
	SubplotContext             = story.SubplotContext
	PerfectContentMemory       = story.PerfectContentMemory
	ContextSnippet             = story.ContextSnippet
	ChannelGuidance            = story.ChannelGuidance
	SceneContext               = story.SceneContext
	MonthlyContext             = story.MonthlyContext
	SeasonMonth                = story.SeasonMonth
	SeasonTimeline             = story.SeasonTimeline
	SeasonPlotContext          = story.SeasonPlotContext
	WeeklySubplotContext       = story.WeeklySubplotContext
	CalendarBatchContext       = story.CalendarBatchContext
	CharacterGenerationContext = story.CharacterGenerationContext
)

const (
	WorkModeOnsite   = brand.WorkModeOnsite
	WorkModeRemote   = brand.WorkModeRemote
	WorkModeHybrid   = brand.WorkModeHybrid
	WorkModeFlexible = brand.WorkModeFlexible

	RelationshipAlly         = brand.RelationshipAlly
	RelationshipCollaborator = brand.RelationshipCollaborator
	RelationshipMentor       = brand.RelationshipMentor
	RelationshipSupport      = brand.RelationshipSupport
	RelationshipConflict     = brand.RelationshipConflict
	RelationshipRival        = brand.RelationshipRival

	RelevanceHigh   = brand.RelevanceHigh
	RelevanceMedium = brand.RelevanceMedium
	RelevanceLow    = brand.RelevanceLow

	QualityPerfect = story.QualityPerfect
)

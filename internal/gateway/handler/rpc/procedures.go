package rpc

// Connect procedure paths served by the gateway. The handlers use plain
// structs with the JSON codec, so the paths are declared here instead of
// coming from generated service descriptors.
const (
	ResolveStageProcedure = "/explora.v1.WizardService/ResolveStage"

	UpsertExplorationProcedure = "/explora.v1.ExplorationService/UpsertExploration"
	GetExplorationProcedure    = "/explora.v1.ExplorationService/GetExploration"

	GetGuideProcedure           = "/explora.v1.GuideService/GetGuide"
	OpenEditorSessionProcedure  = "/explora.v1.GuideService/OpenEditorSession"
	MutateGuideProcedure        = "/explora.v1.GuideService/MutateGuide"
	DecideMutationProcedure     = "/explora.v1.GuideService/DecideMutation"
	CloseEditorSessionProcedure = "/explora.v1.GuideService/CloseEditorSession"

	GetPersonaProcedure         = "/explora.v1.PersonaService/GetPersona"
	UpsertPersonaLayerProcedure = "/explora.v1.PersonaService/UpsertPersonaLayer"
	PutPersonaPreviewProcedure  = "/explora.v1.PersonaService/PutPersonaPreview"
)

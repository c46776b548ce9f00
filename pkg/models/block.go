package models

// BlockEnum tags every kind of node a workflow can hold.
type BlockEnum string

const (
	BlockStart              BlockEnum = "start"
	BlockEnd                BlockEnum = "end"
	BlockAnswer             BlockEnum = "answer"
	BlockLLM                BlockEnum = "llm"
	BlockKnowledgeRetrieval BlockEnum = "knowledge-retrieval"
	BlockQuestionClassifier BlockEnum = "question-classifier"
	BlockIfElse             BlockEnum = "if-else"
	BlockCode               BlockEnum = "code"
	BlockTemplateTransform  BlockEnum = "template-transform"
	BlockHTTPRequest        BlockEnum = "http-request"
	BlockVariableAssigner   BlockEnum = "variable-assigner"
	BlockVariableAggregator BlockEnum = "variable-aggregator"
	BlockTool               BlockEnum = "tool"
	BlockParameterExtractor BlockEnum = "parameter-extractor"
	BlockIteration          BlockEnum = "iteration"
	BlockDocExtractor       BlockEnum = "document-extractor"
	BlockListFilter         BlockEnum = "list-operator"
	BlockAgent              BlockEnum = "agent"
	BlockLoop               BlockEnum = "loop"
	BlockTriggerSchedule    BlockEnum = "trigger-schedule"
	BlockTriggerWebhook     BlockEnum = "trigger-webhook"
	BlockTriggerPlugin      BlockEnum = "trigger-plugin"
)

var blocks = map[BlockEnum]struct{}{
	BlockStart: {}, BlockEnd: {}, BlockAnswer: {}, BlockLLM: {},
	BlockKnowledgeRetrieval: {}, BlockQuestionClassifier: {}, BlockIfElse: {},
	BlockCode: {}, BlockTemplateTransform: {}, BlockHTTPRequest: {},
	BlockVariableAssigner: {}, BlockVariableAggregator: {}, BlockTool: {},
	BlockParameterExtractor: {}, BlockIteration: {}, BlockDocExtractor: {},
	BlockListFilter: {}, BlockAgent: {}, BlockLoop: {},
	BlockTriggerSchedule: {}, BlockTriggerWebhook: {}, BlockTriggerPlugin: {},
}

// IsValid reports whether b belongs to the closed set of node kinds.
func (b BlockEnum) IsValid() bool {
	_, ok := blocks[b]

	return ok
}

// IsTrigger reports whether b is one of the trigger node kinds.
func (b BlockEnum) IsTrigger() bool {
	return b == BlockTriggerSchedule || b == BlockTriggerWebhook || b == BlockTriggerPlugin
}

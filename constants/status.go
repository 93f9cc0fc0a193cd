package constants

// Outcome classifies how an item's evaluation ended. It is derived from the
// record, never stored as its own column.
type Outcome string

const (
	OutcomeOK              Outcome = "OK"
	OutcomeExtractionError Outcome = "EXTRACTION_ERROR"
	OutcomeInferenceError  Outcome = "INFERENCE_ERROR"
	OutcomeParseError      Outcome = "PARSE_ERROR"
)

// ItemState is the per-item lifecycle logged by the pipeline.
type ItemState string

const (
	ItemPending          ItemState = "PENDING"
	ItemExtracting       ItemState = "EXTRACTING"
	ItemExtractionFailed ItemState = "EXTRACTION_FAILED"
	ItemExtracted        ItemState = "EXTRACTED"
	ItemScoring          ItemState = "SCORING"
	ItemScoreFailed      ItemState = "SCORE_FAILED"
	ItemParsed           ItemState = "PARSED"
	ItemRecorded         ItemState = "RECORDED"
)

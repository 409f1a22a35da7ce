package logging

// Field names shared by every component so log lines can be filtered consistently.
const (
	FieldFile       = "file_path"
	FieldComponent  = "component"
	FieldProvider   = "provider"
	FieldModel      = "model"
	FieldMerchant   = "merchant"
	FieldCategory   = "category"
	FieldRecordID   = "record_id"
	FieldRunID      = "run_id"
	FieldStatus     = "status"
	FieldReason     = "reason"
	FieldCount      = "count"
	FieldBlock      = "block"
	FieldFormat     = "format"
	FieldDuration   = "duration_ms"
	FieldOutputFile = "output_file"
)

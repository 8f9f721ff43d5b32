package errors

// Error message constants shared by the migration subsystem
const (
	ErrMsgListPending   = "failed to list pending records"
	ErrMsgPersistPlan   = "failed to persist migration plan"
	ErrMsgCriticalRisks = "plan contains critical risks; set force to proceed anyway"
	ErrMsgLoadBackup    = "failed to load backup for rollback"
	ErrMsgBackupEntries = "failed to load backup entries"
)

package repo

const (
	tableAutomations = "src.automations"
	tableExecutions  = "src.automation_executions"
)

const (
	colID         = "id"
	colPlatform   = "platform"
	colName       = "automation_name"
	colIsActive   = "is_active"
	colInitiative = "initiative"
	colCreatedAt  = "created_at"

	colAutomationID = "automation_id"
	colStartTime    = "automation_start_time"
	colEndTime      = "automation_end_time"
	colStatus       = "status"
)

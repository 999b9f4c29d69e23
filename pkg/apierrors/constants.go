package apierrors

const (
	MsgValidationFailed   = "validationFailed"
	MsgTaskNotFound       = "taskNotFound"
	MsgEmptyBatch         = "emptyBatch"
	MsgInvalidTaskPayload = "invalidTaskPayload"
	MsgMissingAuthToken   = "missingAuthToken"
	MsgInvalidAuthToken   = "invalidAuthToken"
	MsgFailListTasks      = "failListTasks"
	MsgFailGetTask        = "failGetTask"
	MsgFailCreateTask     = "failCreateTask"
	MsgFailUpdateTask     = "failUpdateTask"
	MsgFailDeleteTask     = "failDeleteTask"
	MsgFailToggleTask     = "failToggleTask"
	MsgFailBulkUpdate     = "failBulkUpdate"
	MsgFailBulkDelete     = "failBulkDelete"
	MsgFailGetStats       = "failGetStats"
)

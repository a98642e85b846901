package v1

// Log message templates. Each names the route and the outcome; the objects
// involved travel as structured fields, never formatted into the message.
const (
	MsgListReceived = "[GET /sessions] Request received"
	MsgListModel    = "[GET /sessions] View model"
	MsgListFailed   = "[GET /sessions] Failed to retrieve list of brainstorm sessions"

	MsgCreateSessionInvalid = "[POST /sessions] Invalid new session model was submitted"
	MsgCreateSessionFailed  = "[POST /sessions] Failed to create new brainstorm session"
	MsgSessionCreated       = "[POST /sessions] New brainstorm session was created"

	MsgDetailReceived = "[GET /sessions/{id}] Request received"
	MsgDetailFailed   = "[GET /sessions/{id}] Failed to retrieve brainstorm session"
	MsgDetailNotFound = "[GET /sessions/{id}] Session was not found"
	MsgDetailSession  = "[GET /sessions/{id}] Session"
	MsgDetailView     = "[GET /sessions/{id}] Session view"

	MsgIdeasReceived = "[GET /sessions/{id}/ideas] Request received"
	MsgIdeasFailed   = "[GET /sessions/{id}/ideas] Failed to retrieve brainstorm session"
	MsgIdeasNotFound = "[GET /sessions/{id}/ideas] Session was not found"
	MsgIdeasList     = "[GET /sessions/{id}/ideas] Ideas"

	MsgCreateIdeaInvalid      = "[POST /ideas] Invalid model for idea creation"
	MsgCreateIdeaLookupFailed = "[POST /ideas] Failed to get session by id"
	MsgCreateIdeaNotFound     = "[POST /ideas] Session was not found"
	MsgIdeaCreated            = "[POST /ideas] New idea for session was created"
	MsgCreateIdeaFailed       = "[POST /ideas] Failed to add new idea for session"
)

// Field names shared by the events above.
const (
	FieldModel       = "model"
	FieldErrors      = "errors"
	FieldSessionID   = "session_id"
	FieldIdeaID      = "idea_id"
	FieldSession     = "session"
	FieldSessionView = "session_view"
	FieldIdeas       = "ideas"
	FieldIdea        = "idea"
)

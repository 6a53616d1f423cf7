package models

// NoticeAuthorRole restricts who may author a notice.
type NoticeAuthorRole string

const (
	NoticeAuthorFaculty NoticeAuthorRole = "faculty"
	NoticeAuthorAdmin   NoticeAuthorRole = "admin"
)

// NoticePriority orders notices by urgency.
type NoticePriority string

const (
	NoticePriorityLow    NoticePriority = "low"
	NoticePriorityMedium NoticePriority = "medium"
	NoticePriorityHigh   NoticePriority = "high"
)

// ResourceType classifies a learning resource.
type ResourceType string

const (
	ResourceTypePDF      ResourceType = "pdf"
	ResourceTypeVideo    ResourceType = "video"
	ResourceTypeLink     ResourceType = "link"
	ResourceTypeDocument ResourceType = "document"
)

// SubmissionStatus tracks the lifecycle of a submission.
type SubmissionStatus string

const (
	SubmissionStatusSubmitted SubmissionStatus = "submitted"
	SubmissionStatusGraded    SubmissionStatus = "graded"
	SubmissionStatusLate      SubmissionStatus = "late"
)

// TimetableType classifies a timetable slot.
type TimetableType string

const (
	TimetableTypeLecture  TimetableType = "lecture"
	TimetableTypeLab      TimetableType = "lab"
	TimetableTypeTutorial TimetableType = "tutorial"
)

// Assignment represents a persisted assignment row. Date fields are stored
// as the ISO strings the clients send and returned unchanged.
type Assignment struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Subject     string `db:"subject" json:"subject"`
	FacultyName string `db:"faculty_name" json:"facultyName"`
	DueDate     string `db:"due_date" json:"dueDate"`
	TotalMarks  int64  `db:"total_marks" json:"totalMarks"`
	Department  string `db:"department" json:"department"`
	Year        int64  `db:"year" json:"year"`
	CreatedAt   string `db:"created_at" json:"createdAt"`
}

// Notice represents a persisted notice row.
type Notice struct {
	ID         int64  `db:"id" json:"id"`
	Title      string `db:"title" json:"title"`
	Content    string `db:"content" json:"content"`
	Author     string `db:"author" json:"author"`
	AuthorRole string `db:"author_role" json:"authorRole"`
	Department string `db:"department" json:"department"`
	Priority   string `db:"priority" json:"priority"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

// Resource represents a persisted learning resource row.
type Resource struct {
	ID         int64  `db:"id" json:"id"`
	Title      string `db:"title" json:"title"`
	Type       string `db:"type" json:"type"`
	Subject    string `db:"subject" json:"subject"`
	UploadedBy string `db:"uploaded_by" json:"uploadedBy"`
	UploadDate string `db:"upload_date" json:"uploadDate"`
	URL        string `db:"url" json:"url"`
	Department string `db:"department" json:"department"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

// Submission represents a persisted assignment submission row.
type Submission struct {
	ID            int64   `db:"id" json:"id"`
	AssignmentID  int64   `db:"assignment_id" json:"assignmentId"`
	StudentID     string  `db:"student_id" json:"studentId"`
	StudentName   string  `db:"student_name" json:"studentName"`
	SubmittedDate string  `db:"submitted_date" json:"submittedDate"`
	FileURL       *string `db:"file_url" json:"fileUrl"`
	Grade         *int64  `db:"grade" json:"grade"`
	Feedback      *string `db:"feedback" json:"feedback"`
	Status        string  `db:"status" json:"status"`
	CreatedAt     string  `db:"created_at" json:"createdAt"`
}

// TimetableEntry represents a persisted timetable slot row.
type TimetableEntry struct {
	ID        int64  `db:"id" json:"id"`
	Day       string `db:"day" json:"day"`
	Time      string `db:"time" json:"time"`
	Subject   string `db:"subject" json:"subject"`
	Faculty   string `db:"faculty" json:"faculty"`
	Room      string `db:"room" json:"room"`
	Type      string `db:"type" json:"type"`
	CreatedAt string `db:"created_at" json:"createdAt"`
}

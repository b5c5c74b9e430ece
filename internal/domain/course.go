package domain

// Course holds the course-level fields we copy into the offline metadata.
// Field names mirror the training API payload.
type Course struct {
	ID          int64  `json:"id"`
	CourseType  string `json:"courseType"`
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	Level       string `json:"level,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

// TrainingDay is one ordered day of a course with its steps.
type TrainingDay struct {
	ID             int64          `json:"id"`
	Title          string         `json:"title"`
	DayNumber      int            `json:"dayNumber"`
	EquipmentItems []string       `json:"equipmentItems,omitempty"`
	Steps          []TrainingStep `json:"steps"`
}

// TrainingStep is one step inside a training day. Media references are
// optional. DurationSec is the planned time for the step.
type TrainingStep struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Type        string   `json:"type,omitempty"` // TRAINING, THEORY, EXAM; empty on older records
	DurationSec int      `json:"durationSec"`
	VideoURL    string   `json:"videoUrl,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	PdfURL      string   `json:"pdfUrl,omitempty"`
	Checklist   []string `json:"checklist,omitempty"`
}

// MediaFiles is the flat URL list the API attaches to a full course bundle.
type MediaFiles struct {
	Videos []string `json:"videos"`
	Images []string `json:"images"`
	Pdfs   []string `json:"pdfs"`
}

// FullCourseData is the bundle the API returns for one offline download.
type FullCourseData struct {
	Course       Course        `json:"course"`
	TrainingDays []TrainingDay `json:"trainingDays"`
	MediaFiles   MediaFiles    `json:"mediaFiles"`
}

// OfflineCourseMeta is the document persisted as meta.json, one per
// downloaded course. SchemaVersion is injected by the storage layer at save
// time; a mismatch on read invalidates the whole record (no migration path).
type OfflineCourseMeta struct {
	SchemaVersion int           `json:"schemaVersion"`
	Course        Course        `json:"course"`
	TrainingDays  []TrainingDay `json:"trainingDays"`
	Version       string        `json:"version"`      // course last-modified marker, used for update checks
	DownloadedAt  string        `json:"downloadedAt"` // ISO-8601
}

package models

// Category groups catalog courses on the dashboard.
type Category string

const (
	CategoryCore     Category = "Core"
	CategoryMajor    Category = "Major"
	CategorySubMajor Category = "Sub-major"
	CategoryElective Category = "Elective"
)

// Course is an entry of the program catalog shown on the dashboard.
type Course struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Major    string   `json:"major,omitempty"`
	SubMajor string   `json:"subMajor,omitempty"`
}

// CourseFormInput is one drafted row of the course entry form.
type CourseFormInput struct {
	CourseName   string `json:"courseName" validate:"required,notblank"`
	Category     string `json:"category" validate:"required"`
	LectureNotes string `json:"lectureNotes"`
}

package models

import "encoding/json"

// AnalyzedCourseNode is a course enriched with analysis output, as persisted.
type AnalyzedCourseNode struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	Category     string   `json:"category"`
	Topics       []string `json:"topics"`
	Skills       []string `json:"skills"`
	Connections  []string `json:"connections"`
	LectureNotes string   `json:"lectureNotes"`
}

// StorageDocument is the single JSON value kept in the storage slot.
// Edges are not interpreted by this service and round-trip verbatim.
type StorageDocument struct {
	Nodes     []AnalyzedCourseNode `json:"nodes"`
	Edges     []json.RawMessage    `json:"edges"`
	Timestamp string               `json:"timestamp,omitempty"`
	Version   string               `json:"version,omitempty"`
}

// Package dto defines the request bodies for the notes feature's HTTP
// transport layer.
package dto

// NoteReq is the request body for creating or updating a note.
type NoteReq struct {
	Title   string `json:"title" binding:"required,max=255"`
	Content string `json:"content"`
}

package dto

// NoteRequest представляет тело запроса на создание или изменение заметки.
type NoteRequest struct {
	Content   string `json:"content"`
	Important bool   `json:"important"`
}

// DefaultNoteRequest возвращает запрос со значениями по умолчанию.
// Тело декодируется поверх него, поэтому пропущенные поля сохраняют эти значения.
func DefaultNoteRequest() NoteRequest {
	return NoteRequest{Important: false}
}

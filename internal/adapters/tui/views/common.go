package views

// ViewState carries the dimensions and status message every view model needs.
// The preview and result models embed it.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize records the terminal dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets the status line shown in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage removes the status line
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

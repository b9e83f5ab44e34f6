package views

// Messages for view switching, emitted by the views and handled by the
// app model.

// SwitchToReaderMsg opens a file in the reader view
type SwitchToReaderMsg struct {
	FileName string
}

// SwitchToCalendarMsg shows the activity calendar
type SwitchToCalendarMsg struct{}

// SwitchToHelpMsg shows the key reference
type SwitchToHelpMsg struct{}

// SwitchToBrowserMsg returns to the browser view
type SwitchToBrowserMsg struct{}

// OpenEditorMsg asks the app to run the external editor on a file
type OpenEditorMsg struct {
	FileName string
}

type errMsg struct {
	err error
}

type successMsg struct {
	message string
}

package tui

type focusArea int

const (
	focusList focusArea = iota
	focusInput
)

type modalKind int

const (
	modalNone modalKind = iota
	modalDueDate
	modalEditText
	modalConfirmDelete
	modalError
	modalHelp
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

type minibufferClearMsg struct{ seq int }

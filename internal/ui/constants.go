// Package ui provides shared UI constants and utilities.
package ui

// Layout constants for the picker popup.
const (
	// BorderHeight is the vertical space consumed by the popup border.
	BorderHeight = 2

	// BoxOverheadX is the horizontal space taken by border and padding.
	BoxOverheadX = 4

	// SearchHeight is the search line plus its separator.
	SearchHeight = 2

	// MenuHeaderHeight is the breadcrumb line shown inside a submenu.
	MenuHeaderHeight = 1

	// FooterHeight is the separator plus the status line.
	FooterHeight = 2

	// PopupOverhead is the vertical overhead around the option list at root.
	// Used to calculate available list height: listHeight = height - PopupOverhead
	PopupOverhead = BorderHeight + SearchHeight + FooterHeight

	// PageOverlap is the number of rows kept on screen by page up/down.
	PageOverlap = 1

	// MinPopupWidth is the narrowest popup that still shows a label.
	MinPopupWidth = 20
)

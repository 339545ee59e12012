package ui

// LayoutCompactWidth is the terminal width below which cards drop the
// description line.
const LayoutCompactWidth = 80

// Product list geometry.
const (
	// cardHeight is the number of lines one product card occupies,
	// including the blank separator line.
	cardHeight = 4

	// skeletonCards is the number of placeholders shown while loading.
	skeletonCards = 6

	// chromeHeight is the number of lines used by header and command bar.
	chromeHeight = 2
)

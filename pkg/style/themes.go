package style

import (
	"github.com/charmbracelet/lipgloss"
)

// Color definitions using AdaptiveColor for automatic light/dark mode switching
var (
	HeadingColor = lipgloss.AdaptiveColor{
		Light: "#212529",
		Dark:  "#F8F9FA",
	}

	MutedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#ADB5BD",
	}

	PathColor = lipgloss.AdaptiveColor{
		Light: "#0EA5E9",
		Dark:  "#38BDF8",
	}
)

// Outcome colors
var (
	SatisfiedColor = lipgloss.AdaptiveColor{
		Light: "#6C757D",
		Dark:  "#A0A8B0",
	}

	AppliedColor = lipgloss.AdaptiveColor{
		Light: "#28A745",
		Dark:  "#4CDD76",
	}

	FailedColor = lipgloss.AdaptiveColor{
		Light: "#DC3545",
		Dark:  "#FF6B7D",
	}

	PendingColor = lipgloss.AdaptiveColor{
		Light: "#F59E0B",
		Dark:  "#FBBF24",
	}

	ApplyingColor = lipgloss.AdaptiveColor{
		Light: "#17A2B8",
		Dark:  "#4DD0E1",
	}
)

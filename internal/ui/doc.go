// Package ui provides terminal output helpers shared by the rfdash commands:
// tables for plain output, the SSH host picker, and color profile setup.
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Good readings
//	ColorError     (red)    - Errors
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational output
//	ColorPrimary   (white)  - Primary text
//	ColorSecondary (blue)   - Highlights
//	ColorMuted     (gray)   - Secondary text
package ui

// Package sheet turns a photographed answer sheet into a rectified,
// contrast-enhanced grayscale image of fixed canonical dimensions, ready
// for grid-based mark extraction.
//
// Normalization locates the sheet outline in the photo, and when its
// boundary approximates a quadrilateral, warps the four corners onto the
// canonical rectangle. When no clean four-corner outline is found the
// grayscale image is used as-is, scaled to the canonical size; a skewed
// but readable sheet is preferable to a hard failure.
package sheet

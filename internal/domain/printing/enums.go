package printing

// DocType represents the type of business document that can be printed
type DocType string

const (
	DocTypeCheckRequest DocType = "CHECK_REQUEST" // solicitud de cheque
	DocTypeMemorandum   DocType = "MEMORANDUM"    // memorándum
)

// IsValid checks if the DocType is a valid value
func (d DocType) IsValid() bool {
	switch d {
	case DocTypeCheckRequest, DocTypeMemorandum:
		return true
	}
	return false
}

// String returns the string representation of DocType
func (d DocType) String() string {
	return string(d)
}

// DisplayName returns the Spanish display name for DocType
func (d DocType) DisplayName() string {
	switch d {
	case DocTypeCheckRequest:
		return "Solicitud de cheque"
	case DocTypeMemorandum:
		return "Memorándum"
	default:
		return string(d)
	}
}

// AllDocTypes returns all valid DocType values
func AllDocTypes() []DocType {
	return []DocType{DocTypeCheckRequest, DocTypeMemorandum}
}

// PaperSize represents the paper size for printing
type PaperSize string

const (
	PaperSizeLetter PaperSize = "LETTER" // 216mm x 279mm
	PaperSizeA4     PaperSize = "A4"     // 210mm x 297mm
	PaperSizeCheck  PaperSize = "CHECK"  // 203mm x 89mm voucher check stock
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	switch p {
	case PaperSizeLetter, PaperSizeA4, PaperSizeCheck:
		return true
	}
	return false
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// Dimensions returns the paper dimensions in millimeters (width, height)
func (p PaperSize) Dimensions() (width, height int) {
	switch p {
	case PaperSizeLetter:
		return 216, 279
	case PaperSizeA4:
		return 210, 297
	case PaperSizeCheck:
		return 203, 89
	default:
		return 216, 279 // Default to letter
	}
}

// AllPaperSizes returns all valid PaperSize values
func AllPaperSizes() []PaperSize {
	return []PaperSize{PaperSizeLetter, PaperSizeA4, PaperSizeCheck}
}

// Orientation represents the page orientation for printing
type Orientation string

const (
	OrientationPortrait  Orientation = "PORTRAIT"
	OrientationLandscape Orientation = "LANDSCAPE"
)

// IsValid checks if the Orientation is a valid value
func (o Orientation) IsValid() bool {
	switch o {
	case OrientationPortrait, OrientationLandscape:
		return true
	}
	return false
}

// String returns the string representation of Orientation
func (o Orientation) String() string {
	return string(o)
}

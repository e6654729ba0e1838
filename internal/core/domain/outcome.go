package domain

// OutcomeKind classifies what the duplicate resolver did with an asset.
type OutcomeKind int

const (
	// OutcomeUploaded means the asset was new and uploaded under its canonical name.
	OutcomeUploaded OutcomeKind = iota
	// OutcomeRenamedExisting means an identical file existed under another name.
	OutcomeRenamedExisting
	// OutcomeAlreadyCorrect means an identical file already has the canonical name.
	OutcomeAlreadyCorrect
	// OutcomeSkipped means the asset was deliberately left alone.
	OutcomeSkipped
)

// String returns the lowercase name of the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeUploaded:
		return "uploaded"
	case OutcomeRenamedExisting:
		return "renamed"
	case OutcomeAlreadyCorrect:
		return "already-correct"
	case OutcomeSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Skip reasons.
const (
	ReasonAmbiguousDuplicates = "ambiguous duplicates"
	ReasonUploadWarning       = "upload warning"
)

// UploadOutcome is the decision taken for one downloaded asset.
type UploadOutcome struct {
	Kind OutcomeKind
	// Name is the file name (without namespace) the asset ends up under.
	Name string
	// From is the previous title of a moved file, if any.
	From   string
	Reason string
}

// Uploaded returns an OutcomeUploaded for name.
func Uploaded(name string) UploadOutcome {
	return UploadOutcome{Kind: OutcomeUploaded, Name: name}
}

// RenamedExisting returns an OutcomeRenamedExisting ending at name.
func RenamedExisting(name, from string) UploadOutcome {
	return UploadOutcome{Kind: OutcomeRenamedExisting, Name: name, From: from}
}

// AlreadyCorrect returns an OutcomeAlreadyCorrect for name.
func AlreadyCorrect(name string) UploadOutcome {
	return UploadOutcome{Kind: OutcomeAlreadyCorrect, Name: name}
}

// Skipped returns an OutcomeSkipped with the given reason.
func Skipped(reason string) UploadOutcome {
	return UploadOutcome{Kind: OutcomeSkipped, Reason: reason}
}

// Produced reports whether the outcome left a file under Name.
func (o UploadOutcome) Produced() bool {
	return o.Kind != OutcomeSkipped
}

// Duplicate reports whether the outcome reused an existing wiki file.
func (o UploadOutcome) Duplicate() bool {
	return o.Kind == OutcomeRenamedExisting || o.Kind == OutcomeAlreadyCorrect
}

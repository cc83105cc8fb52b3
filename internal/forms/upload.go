package forms

// Upload form messages
const (
	MsgImageRequired    = "Please select an image to upload"
	MsgDiveSiteRequired = "Please select a dive site"
	MsgCoralRequired    = `Please select an existing coral or switch to "Upload as New Coral"`
)

// Upload modes as they appear on the form
const (
	ModeNewCoral      = "new-coral"
	ModeExistingCoral = "existing-coral"
)

var uploadMessages = map[string]string{
	"ImagePath":       MsgImageRequired,
	"DiveSiteName":    MsgDiveSiteRequired,
	"ExistingCoralID": MsgCoralRequired,
}

// Upload holds the upload form's submission preconditions. Field order is the
// order failures are reported in.
type Upload struct {
	ImagePath       string `validate:"required"`
	DiveSiteName    string `validate:"required"`
	Mode            string `validate:"oneof=new-coral existing-coral"`
	ExistingCoralID string `validate:"required_if=Mode existing-coral"`
}

// Validate checks the submission preconditions and returns the first failure
func (u Upload) Validate() error {
	return check(u, uploadMessages)
}

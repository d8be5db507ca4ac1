package provider

import (
	"github.com/go-playground/validator/v10"

	"github.com/beplic/chatapi-dispatcher/internal/dispatcher/domain"
)

// Chat API actions, one per request shape.
const (
	ActionSendMessage = "sendMessage"
	ActionSendFile    = "sendFile"
	ActionSendAudio   = "sendPTT"
)

// Request is one of the three Chat API request shapes. Each knows the
// action segment of the URL it must be posted to.
type Request interface {
	Action() string
}

// SendMessageRequest is the body for /sendMessage.
type SendMessageRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Body  string `json:"body" validate:"required,max=20000"`
}

func (SendMessageRequest) Action() string { return ActionSendMessage }

// SendFileRequest is the body for /sendFile. Body accepts an HTTP URL or
// any base-64 data payload; the per-class MIME check already happened on
// the inbound message, so this layer only re-checks the generic shape.
type SendFileRequest struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Filename string `json:"filename" validate:"required,max=300"`
	Body     string `json:"body" validate:"required,urlorb64file"`
}

func (SendFileRequest) Action() string { return ActionSendFile }

// SendAudioRequest is the body for /sendPTT.
type SendAudioRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
	Audio string `json:"audio" validate:"required,urlorb64audio"`
}

func (SendAudioRequest) Action() string { return ActionSendAudio }

// RegisterValidations installs the custom tags the request shapes use on
// a validator instance.
func RegisterValidations(validate *validator.Validate) error {
	if err := validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return domain.PhoneRule.Matches(fl.Field().String())
	}); err != nil {
		return err
	}

	if err := validate.RegisterValidation("urlorb64file", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return domain.IsHTTPURL(value) || domain.Base64FileRule.Matches(value)
	}); err != nil {
		return err
	}

	return validate.RegisterValidation("urlorb64audio", func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		return domain.IsHTTPURL(value) || domain.Base64AudioRule.Matches(value)
	})
}

// BuildRequest maps a validated message onto exactly one request shape.
// Media wins over text; when neither media nor text is set the message
// passed the at-least-one gate with audio, so the audio shape is the
// fallthrough.
func BuildRequest(msg *domain.Message) Request {
	if media := msg.MediaSource(); media != nil {
		return SendFileRequest{
			Phone:    msg.Phone,
			Filename: msg.Filename,
			Body:     *media,
		}
	}

	if msg.Text != nil {
		return SendMessageRequest{Phone: msg.Phone, Body: *msg.Text}
	}

	var audio string
	if msg.Audio != nil {
		audio = *msg.Audio
	}
	return SendAudioRequest{Phone: msg.Phone, Audio: audio}
}

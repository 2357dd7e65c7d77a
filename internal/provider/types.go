package provider

// Statuts natifs D-ID pour un talk
const (
	TalkStatusCreated  = "created"
	TalkStatusStarted  = "started"
	TalkStatusDone     = "done"
	TalkStatusError    = "error"
	TalkStatusRejected = "rejected"
)

// TalkRequest est le payload de POST /talks
type TalkRequest struct {
	Script      Script `json:"script"`
	DriverID    string `json:"driver_id,omitempty"`
	PresenterID string `json:"presenter_id,omitempty"`
	// SourceImage est une image de référence encodée en base64; exclusif
	// avec PresenterID
	SourceImage string `json:"source_image,omitempty"`
}

type Script struct {
	Type     string         `json:"type"`
	Input    string         `json:"input"`
	Provider ScriptProvider `json:"provider"`
}

type ScriptProvider struct {
	Type    string `json:"type"`
	VoiceID string `json:"voice_id"`
}

// TalkResponse est la réponse de POST /talks et GET /talks/{id}
type TalkResponse struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	ResultURL string `json:"result_url,omitempty"`
}

// Presenter est une entrée de GET /presenters
type Presenter struct {
	PresenterID  string `json:"presenter_id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type presentersResponse struct {
	Presenters []Presenter `json:"presenters"`
}

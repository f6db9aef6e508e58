package www

// Subset of the Alexa Skills Kit request and response envelopes.

const (
	requestLaunch       = "LaunchRequest"
	requestIntent       = "IntentRequest"
	requestSessionEnded = "SessionEndedRequest"
)

type skillRequest struct {
	Version string `json:"version"`
	Session struct {
		SessionId string `json:"sessionId"`
		New       bool   `json:"new"`
	} `json:"session"`
	Request struct {
		Type      string `json:"type"`
		RequestId string `json:"requestId"`
		Timestamp string `json:"timestamp"`
		Locale    string `json:"locale"`
		Intent    struct {
			Name  string          `json:"name"`
			Slots map[string]slot `json:"slots"`
		} `json:"intent"`
	} `json:"request"`
}

type slot struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func (r skillRequest) slotValue(name string) string {
	if s, ok := r.Request.Intent.Slots[name]; ok {
		return s.Value
	}
	return ""
}

type outputSpeech struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type reprompt struct {
	OutputSpeech outputSpeech `json:"outputSpeech"`
}

type skillResponse struct {
	Version  string `json:"version"`
	Response struct {
		OutputSpeech     *outputSpeech `json:"outputSpeech,omitempty"`
		Reprompt         *reprompt     `json:"reprompt,omitempty"`
		ShouldEndSession *bool         `json:"shouldEndSession,omitempty"`
	} `json:"response"`
}

func plainText(text string) *outputSpeech {
	return &outputSpeech{Type: "PlainText", Text: text}
}

// tell speaks and ends the session.
func tell(text string) skillResponse {
	var r skillResponse
	r.Version = "1.0"
	r.Response.OutputSpeech = plainText(text)
	end := true
	r.Response.ShouldEndSession = &end
	return r
}

// ask speaks and keeps the session open for an answer.
func ask(text, repromptText string) skillResponse {
	var r skillResponse
	r.Version = "1.0"
	r.Response.OutputSpeech = plainText(text)
	r.Response.Reprompt = &reprompt{OutputSpeech: *plainText(repromptText)}
	end := false
	r.Response.ShouldEndSession = &end
	return r
}

func empty() skillResponse {
	var r skillResponse
	r.Version = "1.0"
	return r
}

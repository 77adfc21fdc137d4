package chat

import "encoding/json"

// Response is the typed result of a chat call. The endpoint is loosely
// specified, so Response is an open record: the typed core plus an Extra bag
// preserving any top-level keys the parser did not recognize.
type Response struct {
	Text     string
	Model    string
	Usage    map[string]int
	Metadata map[string]any
	Extra    map[string]any
}

// parseResponse maps an arbitrary JSON object into a Response. It never
// fails: when neither "response" nor "message" is present the compact JSON
// of the whole object becomes the text, which degrades an unexpected shape
// into something debuggable instead of an error.
func parseResponse(raw map[string]any) *Response {
	out := &Response{}

	if s, ok := raw["response"].(string); ok {
		out.Text = s
	} else if s, ok := raw["message"].(string); ok {
		out.Text = s
	} else {
		b, err := json.Marshal(raw)
		if err != nil {
			out.Text = "{}"
		} else {
			out.Text = string(b)
		}
	}

	if s, ok := raw["model"].(string); ok {
		out.Model = s
	}
	if u, ok := raw["usage"].(map[string]any); ok {
		out.Usage = make(map[string]int, len(u))
		for k, v := range u {
			if n, ok := v.(float64); ok {
				out.Usage[k] = int(n)
			}
		}
	}
	if m, ok := raw["metadata"].(map[string]any); ok {
		out.Metadata = m
	}

	for k, v := range raw {
		switch k {
		case "response", "message", "model", "usage", "metadata":
		default:
			if out.Extra == nil {
				out.Extra = make(map[string]any)
			}
			out.Extra[k] = v
		}
	}

	return out
}

package driven

import "net/http"

// HTTPDoer sends HTTP requests. *http.Client satisfies it.
// The auth adapters return one per auth mode, with bearer and quota headers attached.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

package types

// ProxyFetchRequest is the JSON body of the fixed image-proxy endpoint.
type ProxyFetchRequest struct {
	URL string `json:"url" binding:"required"`
}

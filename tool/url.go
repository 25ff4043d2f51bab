package tool

import (
	"fmt"
	"net/url"
)

// Outbound share endpoints are fixed; only the query parameters vary.
const (
	xIntentBase       = "https://x.com/intent/post"
	facebookShareBase = "https://www.facebook.com/sharer/sharer.php"
	pinterestPinBase  = "https://pinterest.com/pin/create/button/"
	linkedInShareBase = "https://www.linkedin.com/sharing/share-offsite/"
)

// BuildXShareURL builds the X (Twitter) intent URL with text and optional url.
func BuildXShareURL(title, pageURL string) string {
	q := url.Values{}
	q.Set("text", title)
	if pageURL != "" {
		q.Set("url", pageURL)
	}
	return fmt.Sprintf("%s?%s", xIntentBase, q.Encode())
}

// BuildFacebookShareURL builds the Facebook sharer URL.
func BuildFacebookShareURL(pageURL string) string {
	q := url.Values{}
	q.Set("u", pageURL)
	return fmt.Sprintf("%s?%s", facebookShareBase, q.Encode())
}

// BuildPinterestShareURL builds the Pinterest pin-create URL.
// Pinterest requires a media image, so callers must only offer this
// affordance when at least one image is available.
func BuildPinterestShareURL(pageURL, imageURL, title string) string {
	q := url.Values{}
	q.Set("url", pageURL)
	q.Set("media", imageURL)
	if title != "" {
		q.Set("description", title)
	}
	return fmt.Sprintf("%s?%s", pinterestPinBase, q.Encode())
}

// BuildLinkedInShareURL builds the LinkedIn offsite share URL.
func BuildLinkedInShareURL(pageURL string) string {
	q := url.Values{}
	q.Set("url", pageURL)
	return fmt.Sprintf("%s?%s", linkedInShareBase, q.Encode())
}

// BuildEmailShareURL builds a mailto link with the title as subject and the
// page URL as body.
func BuildEmailShareURL(title, pageURL string) string {
	q := url.Values{}
	q.Set("subject", title)
	q.Set("body", pageURL)
	// mailto query encoding uses %20 for spaces, not '+'
	return fmt.Sprintf("mailto:?%s", urlValuesPercentEncoded(q))
}

// urlValuesPercentEncoded encodes values like url.Values.Encode but with
// spaces percent-encoded, which mail clients expect in mailto links.
func urlValuesPercentEncoded(q url.Values) string {
	encoded := q.Encode()
	out := make([]byte, 0, len(encoded))
	for i := 0; i < len(encoded); i++ {
		if encoded[i] == '+' {
			out = append(out, '%', '2', '0')
			continue
		}
		out = append(out, encoded[i])
	}
	return string(out)
}

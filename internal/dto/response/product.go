package response

type ImageResponse struct {
	ImageURL string `json:"imageUrl"`
}

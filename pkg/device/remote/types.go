package remote

type EmptyResponse struct {
}

type BoundsResponse struct {
	Width  int
	Height int
}

type DrawBitmapRequest struct {
	PosX  uint16
	PosY  uint16
	Image []byte
}

package mixer

import "image"

// Write is one partial update: Img is drawn with its top-left corner at At.
type Write struct {
	At  image.Point
	Img image.Image
}

type Image interface {
	image.Image
	SubImage(image.Rectangle) image.Image
}

type Effect interface {
	Name() string
	Process(img Image) (<-chan Write, error)
}

// emit streams ws in order and closes the channel.
func emit(ws []Write) <-chan Write {
	wc := make(chan Write)
	go func() {
		for _, w := range ws {
			wc <- w
		}
		close(wc)
	}()
	return wc
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "fmt"

// Asset base URLs. Input images live on the jsDelivr CDN, enhanced outputs
// in blob storage keyed by model name.
const (
	InputImageBase    = "https://cdn.jsdelivr.net/gh/SimoneSarrocco/images-oct@main/inputs"
	EnhancedImageBase = "https://ykpapaa0p8nihfde.public.blob.vercel-storage.com"
)

// EnhancedImageFilename returns the stored filename for a model's output on
// the given input image. BBDM exports are 0-indexed x_{n-1}_0.png, every
// other model uses 1-indexed output_{n}.png.
func EnhancedImageFilename(model string, imageNumber int) string {
	if model == "BBDM" {
		return fmt.Sprintf("x_%d_0.png", imageNumber-1)
	}
	return fmt.Sprintf("output_%d.png", imageNumber)
}

// EnhancedImageURL returns the full URL for a model's enhanced output.
func EnhancedImageURL(model string, imageNumber int) string {
	return fmt.Sprintf("%s/%s/%s", EnhancedImageBase, model, EnhancedImageFilename(model, imageNumber))
}

// InputImageURL returns the full URL for a raw input image.
func InputImageURL(imageNumber int) string {
	return fmt.Sprintf("%s/%d.jpg", InputImageBase, imageNumber)
}

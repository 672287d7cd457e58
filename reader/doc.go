// Package reader loads raster images for OCR.
//
// PNG, JPEG and GIF are decoded with the standard library; BMP, TIFF and
// WebP decoders come from golang.org/x/image. Use [Open] for files:
//
//	img, err := reader.Open("scan.tif")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(img.Format, img.Width(), img.Height())
//
// or [Decode] / [DecodeBytes] for data already in memory. A missing file or
// undecodable content is always returned as an error; there is no partial
// result.
package reader

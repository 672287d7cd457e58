//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestNewReturnsError(t *testing.T) {
	client, err := New()
	if err == nil {
		t.Error("Expected error from New() when OCR is disabled")
	}
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("Expected ErrOCRNotEnabled, got: %v", err)
	}
	if client != nil {
		t.Error("Expected nil client when OCR is disabled")
	}
}

func TestCloseOnNilClient(t *testing.T) {
	var client *Client
	err := client.Close()
	if err != nil {
		t.Errorf("Close on nil client should not error: %v", err)
	}
}

func TestStubMethodsReturnError(t *testing.T) {
	c := &Client{}
	if _, err := c.RecognizeImage(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("RecognizeImage: got %v", err)
	}
	if _, err := c.HOCR(nil); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("HOCR: got %v", err)
	}
	if err := c.SetPageSegMode(DefaultPageSegMode); !errors.Is(err, ErrOCRNotEnabled) {
		t.Errorf("SetPageSegMode: got %v", err)
	}
}

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// readSource reads path and decodes it to a clean UTF-8 string, detecting a
// UTF-8, UTF-16LE, or UTF-16BE byte-order mark. Grounded in the teacher's
// internal/interp/encoding.go detectAndDecodeFile, trimmed to what a source
// file on disk needs (the teacher's variant also serves in-engine string
// literals, which golox's scanner handles on its own).
func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %s: %w", path, err)
	}

	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), nil
	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		return decodeUTF16(data, unicode.LittleEndian)
	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		return decodeUTF16(data, unicode.BigEndian)
	case utf8.Valid(data):
		return string(data), nil
	default:
		return "", fmt.Errorf("file %s is not valid UTF-8 and carries no recognized BOM", path)
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("failed to decode UTF-16: %w", err)
	}
	result := bytes.TrimPrefix(utf8Data, []byte("﻿"))
	return string(result), nil
}

package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mpedramfar/Lean-game-maker/pkg/translate"
)

const (
	gameDataFileName = "game_data.json"
	templateFileName = translate.Domain + ".pot"
)

// MarshalGameData encodes the payload as UTF-8 JSON without HTML escaping.
func MarshalGameData(data *GameData) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("failed to encode game data: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteOutput writes game_data.json into outdir and the translation
// template into localeDir.
func WriteOutput(outdir, localeDir string, res *Result, h translate.Header) error {
	if err := os.MkdirAll(outdir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	payload, err := MarshalGameData(res.Data)
	if err != nil {
		return err
	}
	dataPath := filepath.Join(outdir, gameDataFileName)
	if err := os.WriteFile(dataPath, payload, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dataPath, err)
	}

	return translate.SavePOT(filepath.Join(localeDir, templateFileName), res.Catalog, h)
}

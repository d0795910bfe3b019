package model

import (
	"encoding/json"

	"github.com/YuminosukeSato/cartree/pkg/errors"
)

// EnvelopeVersion は現在のエンベロープ形式のバージョン
const EnvelopeVersion = "1"

// ModelEnvelope はJSONで書き出すモデルの共通ヘッダ
//
// Payload にはモデル固有の構造（決定木ならノード配列）がそのまま入る。
type ModelEnvelope struct {
	// ModelType はモデルの種類（DecisionTreeClassifier等）
	ModelType string `json:"model_type"`

	// Version は形式のバージョン（互換性チェック用）
	Version string `json:"version"`

	// Hyperparameters はモデルのハイパーパラメータ
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// Metadata は追加のメタデータ（学習時の統計等）
	Metadata map[string]interface{} `json:"metadata,omitempty"`

	// IsFitted はモデルが学習済みかどうか
	IsFitted bool `json:"is_fitted"`

	Payload json.RawMessage `json:"payload,omitempty"`
}

// ToJSON はModelEnvelopeをJSON形式にシリアライズ
func (me *ModelEnvelope) ToJSON() ([]byte, error) {
	return json.MarshalIndent(me, "", "  ")
}

// FromJSON はJSON形式からModelEnvelopeをデシリアライズし、妥当性を検証する
func (me *ModelEnvelope) FromJSON(data []byte) error {
	if err := json.Unmarshal(data, me); err != nil {
		return errors.Wrap(err, "failed to decode model envelope")
	}
	return me.Validate()
}

// Validate はModelEnvelopeの妥当性を検証
func (me *ModelEnvelope) Validate() error {
	if me.ModelType == "" {
		return errors.NewValidationError("model_type", "is required", me.ModelType)
	}
	if me.Version != EnvelopeVersion {
		return errors.NewValidationError("version", "unsupported envelope version", me.Version)
	}
	if me.IsFitted && len(me.Payload) == 0 {
		return errors.NewValidationError("payload", "fitted model must have a payload", nil)
	}
	if !me.IsFitted && len(me.Payload) > 0 {
		return errors.NewValidationError("payload", "unfitted model should not have a payload", nil)
	}
	return nil
}

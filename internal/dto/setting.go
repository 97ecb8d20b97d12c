package dto

// PutSettingRequest sets one key-value setting.
type PutSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

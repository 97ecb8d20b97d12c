package domain

// Setting is a process-wide key-value configuration pair.
type Setting struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Setting keys consumed by the core.
const (
	SettingDefaultCurrencyID      = "defaultCurrencyId"
	SettingDisplayCurrencyID      = "displayCurrencyId"
	SettingDefaultEntryCurrencyID = "defaultEntryCurrencyId"
	SettingBackupFolderHandle     = "backupFolderHandle" // opaque to the core
)

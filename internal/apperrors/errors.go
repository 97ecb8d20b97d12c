package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateName indicates an account name collision (case-insensitive).
var ErrDuplicateName = errors.New("an account with this name already exists")

// ErrInvalidParent indicates a parent account reference that does not resolve,
// or one that would make an account its own ancestor.
var ErrInvalidParent = errors.New("invalid parent account")

// ErrHasChildren indicates an account cannot be deleted because sub-accounts reference it.
var ErrHasChildren = errors.New("account has sub-accounts linked to it")

// ErrInUse indicates an account cannot be deleted because journal entries or
// favorite transactions still reference it.
var ErrInUse = errors.New("account is in use")

// ErrDuplicateCode indicates a currency code collision (case-insensitive).
var ErrDuplicateCode = errors.New("a currency with this code already exists")

// ErrCannotDeleteDefault indicates an attempt to delete the default currency.
var ErrCannotDeleteDefault = errors.New("cannot delete the default currency")

// ErrDuplicateFavoriteName indicates a favorite template name collision.
var ErrDuplicateFavoriteName = errors.New("a favorite with this name already exists")

// ErrUnbalancedEntry indicates a journal entry whose debits and credits do not
// balance, or whose lines are otherwise malformed.
var ErrUnbalancedEntry = errors.New("journal entry does not balance")

// ErrIncompleteTemplate indicates a favorite template missing the account
// reference its type requires.
var ErrIncompleteTemplate = errors.New("favorite template is missing a required account")

// ErrImportFormat indicates a backup document that cannot be imported.
var ErrImportFormat = errors.New("invalid backup format")

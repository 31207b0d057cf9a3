package models

import (
	"errors"
)

var (
	ErrNoOptions          = errors.New("no initialized model options")
	ErrNotFitted          = errors.New("model has not been fit")
	ErrTargetLenMismatch  = errors.New("target length does not match target rows")
	ErrNoTrainingMatrix   = errors.New("no training matrix")
	ErrNoTargetMatrix     = errors.New("no target matrix")
	ErrNoDesignMatrix     = errors.New("no design matrix for inference")
	ErrNoObservations     = errors.New("no observations to fit with")
	ErrFeatureLenMismatch = errors.New("number of features does not match the number of features the model was fit with")
)

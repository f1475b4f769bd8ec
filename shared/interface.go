package shared

import "context"

// Classifier defines the requirements for the fallback trade classifier.
type Classifier interface {
	// Predict returns the class probabilities for the provided feature vector.
	Predict(ctx context.Context, features []float64) (map[string]float64, error)
}

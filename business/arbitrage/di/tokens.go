// Package di contains dependency injection tokens for the arbitrage context.
package di

import (
	"github.com/fd1az/arbitrage-lens/business/arbitrage/app"
	"github.com/fd1az/arbitrage-lens/business/arbitrage/domain"
	"github.com/fd1az/arbitrage-lens/internal/di"
)

// Public service tokens - exposed to other modules
var (
	Analyzer  = di.NewToken[*app.Analyzer]("arbitrage.Analyzer")
	Simulator = di.NewToken[*app.Simulator]("arbitrage.Simulator")
)

// Private dependency tokens - internal to arbitrage module
var (
	Classifier = di.NewToken[*domain.Classifier]("arbitrage:classifier")
)

func GetAnalyzer(c di.ServiceRegistry) *app.Analyzer {
	return di.GetToken(c, Analyzer)
}

func GetSimulator(c di.ServiceRegistry) *app.Simulator {
	return di.GetToken(c, Simulator)
}

func GetClassifier(c di.ServiceRegistry) *domain.Classifier {
	return di.GetToken(c, Classifier)
}

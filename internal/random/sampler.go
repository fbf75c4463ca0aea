// Package random provee un generador de muestras uniformes para simular
// lecturas de sensores cuando no hay hardware real disponible.
package random

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// UniformSampler genera valores independientes con distribucion uniforme
// sobre un intervalo cerrado [min, max]. Cada instancia lleva su propio
// generador PCG sembrado con entropia del proceso, asi cada corrida del
// programa produce secuencias distintas.
type UniformSampler struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewUniformSampler construye un sampler con semilla no determinista.
func NewUniformSampler() *UniformSampler {
	// rand.Uint64 del paquete global ya viene auto-sembrado por el runtime.
	return &UniformSampler{
		rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

// Sample devuelve un valor uniforme en [min, max].
//
// min > max es un error de programacion, no de datos: igual que rand.Intn
// con n <= 0, la llamada entra en panico en lugar de intercambiar los
// limites en silencio.
func (s *UniformSampler) Sample(min, max float64) float64 {
	if min > max {
		panic(fmt.Sprintf("random: invalid sample interval [%v, %v]", min, max))
	}
	if min == max {
		return min
	}
	s.mu.Lock()
	v := s.rng.Float64()
	s.mu.Unlock()
	return min + v*(max-min)
}

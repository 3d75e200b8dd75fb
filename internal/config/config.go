// internal/config/config.go
package config

import "image/color"

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	WorldScale   = 12.0 // pixels per world unit on the XZ plane
	MaxDeltaTime = 0.06
	FixedStep    = 1.0 / 60.0

	// Path walking
	RejoinEpsilon    = 0.1
	EnemyRadius      = 0.4
	EnemyBaseSpeed   = 3.0
	EnemyRotateSpeed = 6.0
	ReachedEndDamage = 1e9

	// Elemental rules
	ModifierTickInterval   = 0.5
	IceSlowFactor          = 0.65
	WaterAmplification     = 0.85
	MaxIceStacks           = 8
	ElectricityWaterDecay  = 0.85
	AcidWaterDecay         = 1.5
	FireTickDamage         = 2.0
	IceToWaterPerStack     = 1.0
	WaterDrinkTickMultiple = 2.0
	GroundIceDamageFactor  = 0.5

	// Waves
	WavePollInterval      = 1.0
	DefaultStartDelay     = 0.0
	DefaultAutoStartDelay = 0.0

	// Turrets
	TurretScanInterval  = 1.0
	TurretFireAngle     = 10.0 // degrees
	MinFireRate         = 0.1
	ProjectileSpeed     = 10.0
	ProjectileHitRadius = 0.3
	ProjectileLifetime  = 5.0
	DamageFlashDuration = 0.15

	// Building
	TowerSpacing  = 1.0 // minimum distance between two buildables
	PathClearance = 0.6 // minimum distance from a buildable to the path
	TowerRadius   = 0.5

	// Window layout
	HUDHeight        = 48
	MapMargin        = 24
	IndicatorOffsetX = 30
	IndicatorRadius  = 14
	HealthBarHeight  = 4
)

// Speed multiplier sources on a path walker.
const (
	MultiplierIce         = "ice"
	MultiplierElectricity = "electricity"
	MultiplierSlower      = "slower"
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	PathColor        = color.RGBA{70, 100, 120, 220}
	ObstacleColor    = color.RGBA{150, 70, 70, 220}
	EntryColor       = color.RGBA{0, 255, 0, 255}
	ExitColor        = color.RGBA{255, 0, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	BuildStateColor  = color.RGBA{70, 130, 180, 220}
	WaveStateColor   = color.RGBA{220, 60, 60, 220}
	TwoXStateColor   = color.RGBA{230, 150, 40, 220}
	EndedStateColor  = color.RGBA{120, 120, 120, 220}
	SelectionColor   = color.RGBA{255, 215, 0, 255}
	TowerStrokeColor = color.RGBA{30, 30, 40, 255}
	EnemyColor       = color.RGBA{235, 235, 235, 255}
	ZoneColor        = color.RGBA{255, 255, 0, 48}
	StrokeWidth      = 2.0

	// ElementColors follow defs.Elements order.
	ElementColors = []color.RGBA{
		{60, 120, 255, 255},  // Water
		{170, 230, 255, 255}, // Ice
		{255, 90, 30, 255},   // Fire
		{120, 230, 60, 255},  // Acid
		{255, 230, 60, 255},  // Electricity
		{150, 110, 70, 255},  // Ground
	}
)

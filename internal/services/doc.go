// Package services defines the error classification shared by pipeline
// stages: sentinel markers that tag failures by kind plus a wrapper that
// records which stage and operation produced them.
package services

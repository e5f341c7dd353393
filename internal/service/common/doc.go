// Package common holds small helpers shared by the voicetrim services.
package common

//go:build release

package vulkanengine

const validationDefault = false

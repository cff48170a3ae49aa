//go:build !release

package vulkanengine

const validationDefault = true

// Package platform selects a gpio.Backend for the build target. MCU targets
// get the machine-backed provider; everything else gets the simulated fabric
// so host tests and demos run unchanged. Linux boards with a GPIO character
// device can use platform/linuxgpio explicitly instead.
package platform

package core

// DefaultFrameRate is the viewer loop rate in frames per second.
const DefaultFrameRate = 60

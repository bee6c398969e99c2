package scene

import "floorspin/internal/gpu"

// Flat vertex-color shaders, one pair per dialect. The MVP uniform is named
// uMVPMatrix in both so a Device can look it up without knowing the dialect.
const (
	esVS = `uniform mat4 uMVPMatrix;
attribute vec4 vPosition;
attribute vec4 vColor;
varying vec4 fColor;
void main() {
  fColor = vColor;
  gl_Position = uMVPMatrix * vPosition;
}
`
	esFS = `precision mediump float;
varying vec4 fColor;
void main() {
  gl_FragColor = fColor;
}
`

	// raylib binds vertexPosition and vertexColor by name.
	coreVS = `#version 330
in vec3 vertexPosition;
in vec4 vertexColor;
uniform mat4 uMVPMatrix;
out vec4 fragColor;
void main() {
  fragColor = vertexColor;
  gl_Position = uMVPMatrix * vec4(vertexPosition, 1.0);
}
`
	coreFS = `#version 330
in vec4 fragColor;
out vec4 finalColor;
void main() {
  finalColor = fragColor;
}
`
)

// FlatShader returns the vertex-color shader pair for d.
func FlatShader(d gpu.Dialect) gpu.ShaderSource {
	if d == gpu.GLSL330 {
		return gpu.ShaderSource{Vertex: coreVS, Fragment: coreFS}
	}
	return gpu.ShaderSource{Vertex: esVS, Fragment: esFS}
}

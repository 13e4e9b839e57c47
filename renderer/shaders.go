package renderer

const cubeVertexShader = `#version 330 core
in vec4 aVertexPosition;
in vec4 aVertexColor;

uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

out vec4 vColor;

void main() {
	gl_Position = uProjectionMatrix * uModelViewMatrix * aVertexPosition;
	vColor = aVertexColor;
}
`

// Shared by both meshes, they only pass the interpolated color through.
const colorFragmentShader = `#version 330 core
in vec4 vColor;

out vec4 fragColor;

void main() {
	fragColor = vColor;
}
`

// aPosition is the side of the line (+1 or -1) a vertex sits on and
// aPointIndex selects the endpoint it belongs to.
const lineVertexShader = `#version 330 core
in float aPosition;
in vec4 aColor;
in float aPointIndex;

uniform float uLineWidth;
uniform vec2 uNormal;
uniform vec3 uPoints[2];
uniform mat4 uModelViewMatrix;
uniform mat4 uProjectionMatrix;

out vec4 vColor;

void main() {
	vec2 offset = uNormal * aPosition * uLineWidth * 0.5;
	vec3 point = uPoints[int(aPointIndex)];
	gl_Position = uProjectionMatrix * (uModelViewMatrix * vec4(point, 1.0) + vec4(offset, 0.0, 0.0));
	vColor = aColor;
}
`

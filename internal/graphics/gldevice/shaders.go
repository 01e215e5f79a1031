package gldevice

const meshVert = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat3 uNormalMatrix;

out vec3 vNormal;
out vec3 vColor;

void main() {
	vNormal = uNormalMatrix * aNormal;
	vColor = aColor;
	gl_Position = uProjection * uView * uModel * vec4(aPos, 1.0);
}
`

// uShading takes the material.Shading values.
const meshFrag = `#version 410 core
in vec3 vNormal;
in vec3 vColor;

uniform int uShading;
uniform vec3 uColor;
uniform float uOpacity;

out vec4 FragColor;

void main() {
	vec3 c = uColor;
	if (uShading == 1) {
		c = normalize(vNormal) * 0.5 + 0.5;
	} else if (uShading == 2) {
		c = vColor;
	}
	FragColor = vec4(c, uOpacity);
}
`

const rectVert = `#version 410 core
layout (location = 0) in vec2 aPos;
uniform mat4 uProjection;

void main() {
	gl_Position = uProjection * vec4(aPos, 0.0, 1.0);
}
`

const rectFrag = `#version 410 core
uniform vec4 uColor;
out vec4 FragColor;

void main() {
	FragColor = uColor;
}
`

const textVert = `#version 410 core
layout (location = 0) in vec4 aVertex; // xy position, zw uv
uniform mat4 uProjection;
out vec2 vUV;

void main() {
	vUV = aVertex.zw;
	gl_Position = uProjection * vec4(aVertex.xy, 0.0, 1.0);
}
`

const textFrag = `#version 410 core
in vec2 vUV;
uniform sampler2D uAtlas;
uniform vec3 uColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, texture(uAtlas, vUV).r);
}
`

package vkg

import (
	"encoding/binary"
	"fmt"
	"os"

	vk "github.com/vulkan-go/vulkan"
)

const spirvMagic = 0x07230203

type ShaderModule struct {
	Device         *Device
	Description    string
	VKShaderModule vk.ShaderModule
}

func (d *Device) LoadShaderModuleFromFile(file string) (*ShaderModule, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, err := d.LoadShaderModule(data)
	if err != nil {
		return nil, fmt.Errorf("loading shader %s: %w", file, err)
	}
	m.Description = file
	return m, nil
}

// LoadShaderModule creates a shader module from SPIR-V byte code
func (d *Device) LoadShaderModule(data []byte) (*ShaderModule, error) {
	code, err := spirvWords(data)
	if err != nil {
		return nil, err
	}

	var module vk.ShaderModule
	err = vk.Error(vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(data)),
		PCode:    code,
	}, nil, &module))
	if err != nil {
		return nil, err
	}

	return &ShaderModule{VKShaderModule: module, Device: d}, nil
}

// spirvWords checks the SPIR-V header and returns the code as words
func spirvWords(data []byte) ([]uint32, error) {
	if len(data) < 4 || len(data)%4 != 0 {
		return nil, fmt.Errorf("SPIR-V code must be a non empty multiple of 4 bytes, got %d", len(data))
	}
	words := make([]uint32, len(data)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4:])
	}
	if words[0] != spirvMagic {
		return nil, fmt.Errorf("bad SPIR-V magic %#08x", words[0])
	}
	return words, nil
}

func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString(entryPoint),
	}
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}

package vulkanengine

import (
	"unsafe"

	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"
)

// Version is used to specify versions of components
type Version struct {
	Major int `toml:"major"`
	Minor int `toml:"minor"`
	Patch int `toml:"patch"`
}

// VKVersion returns a Vulkan compatible version representation
func (v Version) VKVersion() uint32 {
	return vk.MakeVersion(v.Major, v.Minor, v.Patch)
}

// App is used to provide information about this specific application to Vulkan.
// The extension and layer lists are fixed once the instance is created.
type App struct {
	// Name the name of the application
	Name string
	// Engine the name of the engine associated with the application
	EngineName string
	// Version the version of the application
	Version Version
	// APIVersion the expected minimum version of the Vulkan API (i.e. 1.3.0)
	APIVersion Version

	// EnabledLayers the enabled layers
	EnabledLayers []string

	// EnabledExtensions the enabled extensions
	EnabledExtensions []string
}

//VKApplicationInfo creates a structure representing this application in a Vulkan friendly format
func (a *App) VKApplicationInfo() vk.ApplicationInfo {
	api := a.APIVersion
	if api.Major < 1 {
		api = Version{Major: 1}
	}

	return vk.ApplicationInfo{
		SType:              vk.StructureTypeApplicationInfo,
		ApiVersion:         api.VKVersion(),
		ApplicationVersion: a.Version.VKVersion(),
		EngineVersion:      a.Version.VKVersion(),
		PApplicationName:   safeString(a.Name),
		PEngineName:        safeString(a.EngineName),
	}
}

// CreateInstance creates the Vulkan instance. When debug is non nil it is
// chained into the create info so messages emitted while the instance is
// being created reach the diagnostic sink before a channel exists.
func (a *App) CreateInstance(debug *vk.DebugReportCallbackCreateInfo) (*Instance, error) {
	appInfo := a.VKApplicationInfo()

	extensions := safeStrings(a.EnabledExtensions)
	layers := safeStrings(a.EnabledLayers)

	createInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        &appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
		EnabledLayerCount:       uint32(len(layers)),
		PpEnabledLayerNames:     layers,
	}

	if debug != nil {
		debug.PassRef()
		defer debug.Free()
		createInfo.PNext = unsafe.Pointer(debug.Ref())
	}

	instance := &Instance{}

	err := vkError(vk.CreateInstance(&createInfo, nil, &instance.VKInstance), "create instance")
	if err != nil {
		return nil, errors.Mark(err, ErrContextCreationFailed)
	}
	if err := vk.InitInstance(instance.VKInstance); err != nil {
		vk.DestroyInstance(instance.VKInstance, nil)
		return nil, errors.Mark(errors.Wrap(err, "load instance entry points"), ErrContextCreationFailed)
	}

	Logger().Debug("created instance",
		"app", a.Name,
		"extensions", a.EnabledExtensions,
		"layers", a.EnabledLayers)

	return instance, nil
}

//PhysicalDevices returns a list of physical devices known to Vulkan, with
//their properties, features and queue families already queried.
func (i *Instance) PhysicalDevices() ([]*PhysicalDevice, error) {
	var deviceCount uint32
	err := vkError(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, nil), "enumerate physical devices")
	if err != nil {
		return nil, err
	}

	if deviceCount == 0 {
		return nil, nil
	}

	devices := make([]vk.PhysicalDevice, deviceCount)
	err = vkError(vk.EnumeratePhysicalDevices(i.VKInstance, &deviceCount, devices), "enumerate physical devices")
	if err != nil {
		return nil, err
	}

	ret := make([]*PhysicalDevice, 0, deviceCount)
	for _, device := range devices[:deviceCount] {
		ret = append(ret, queryPhysicalDevice(device))
	}
	return ret, nil
}

//Instance is an instance of the Vulkan subsystem
type Instance struct {
	//VKInstance is the native Vulkan instance object
	VKInstance vk.Instance
}

// Destroy destroys the instance. Every channel, device and buffer created
// from it must already be destroyed.
func (i *Instance) Destroy() {
	if i == nil || i.VKInstance == nil {
		return
	}
	vk.DestroyInstance(i.VKInstance, nil)
	i.VKInstance = nil
}

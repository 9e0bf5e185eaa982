// Copyright © 2023-2024 Platina Systems, Inc. All rights reserved.
// Use of this source code is governed by the GPL-2 license described in the
// LICENSE file.

package ec

// Names below are shared with the EC firmware headers and must not change.

const EC_PROTO_VERSION = 0x00000002

// EC_VER_MASK returns the bit of a command version in a version mask.
func EC_VER_MASK(version uint) uint32 { return 1 << version }

// I/O addresses for ACPI commands
const (
	EC_LPC_ADDR_ACPI_DATA = 0x62
	EC_LPC_ADDR_ACPI_CMD  = 0x66
)

// I/O addresses for host command
const (
	EC_LPC_ADDR_HOST_DATA = 0x200
	EC_LPC_ADDR_HOST_CMD  = 0x204
)

// I/O addresses for host command args and params
const (
	EC_LPC_ADDR_HOST_ARGS   = 0x800 // and 0x801, 0x802, 0x803
	EC_LPC_ADDR_HOST_PARAM  = 0x804 // version 2 params; size EC_PROTO2_MAX_PARAM_SIZE
	EC_LPC_ADDR_HOST_PACKET = 0x800 // version 3 packet
	EC_LPC_HOST_PACKET_SIZE = 0x100 // max size of version 3 packet
)

// Host command regions; also the MEC EMI window.
const (
	EC_HOST_CMD_REGION0     = 0x800
	EC_HOST_CMD_REGION1     = 0x880
	EC_HOST_CMD_REGION_SIZE = 0x80
)

// EC command register bits
const (
	EC_LPC_CMDR_DATA      = 1 << 0 // data ready for host to read
	EC_LPC_CMDR_PENDING   = 1 << 1 // write pending to EC
	EC_LPC_CMDR_BUSY      = 1 << 2 // EC is busy processing a command
	EC_LPC_CMDR_CMD       = 1 << 3 // last host write was a command
	EC_LPC_CMDR_ACPI_BRST = 1 << 4 // burst mode (not used)
	EC_LPC_CMDR_SCI       = 1 << 5 // SCI event is pending
	EC_LPC_CMDR_SMI       = 1 << 6 // SMI event is pending
)

const (
	EC_LPC_ADDR_MEMMAP = 0x900
	EC_MEMMAP_SIZE     = 255 // ACPI IO buffer max is 255 bytes
	EC_MEMMAP_TEXT_MAX = 8   // size of a string in the memory map
)

// The offset address of each type of data in mapped memory.
const (
	EC_MEMMAP_TEMP_SENSOR      = 0x00 // temp sensors 0x00 - 0x0f
	EC_MEMMAP_FAN              = 0x10 // fan speeds 0x10 - 0x17
	EC_MEMMAP_TEMP_SENSOR_B    = 0x18 // more temp sensors 0x18 - 0x1f
	EC_MEMMAP_ID               = 0x20 // 0x20 == 'E', 0x21 == 'C'
	EC_MEMMAP_ID_VERSION       = 0x22 // version of data in 0x20 - 0x2f
	EC_MEMMAP_THERMAL_VERSION  = 0x23 // version of data in 0x00 - 0x1f
	EC_MEMMAP_BATTERY_VERSION  = 0x24 // version of data in 0x40 - 0x7f
	EC_MEMMAP_SWITCHES_VERSION = 0x25 // version of data in 0x30 - 0x33
	EC_MEMMAP_EVENTS_VERSION   = 0x26 // version of data in 0x34 - 0x3f
	EC_MEMMAP_HOST_CMD_FLAGS   = 0x27 // host cmd interface flags (8 bits)
	EC_MEMMAP_SWITCHES         = 0x30 // 8 bits
	EC_MEMMAP_HOST_EVENTS      = 0x34 // 32 bits
	EC_MEMMAP_BATT_VOLT        = 0x40 // battery present voltage
	EC_MEMMAP_BATT_RATE        = 0x44 // battery present rate
	EC_MEMMAP_BATT_CAP         = 0x48 // battery remaining capacity
	EC_MEMMAP_BATT_FLAG        = 0x4c // battery state, see EC_BATT_FLAG_*
	EC_MEMMAP_BATT_DCAP        = 0x50 // battery design capacity
	EC_MEMMAP_BATT_DVLT        = 0x54 // battery design voltage
	EC_MEMMAP_BATT_LFCC        = 0x58 // battery last full charge capacity
	EC_MEMMAP_BATT_CCNT        = 0x5c // battery cycle count
	EC_MEMMAP_BATT_MFGR        = 0x60 // battery manufacturer string
	EC_MEMMAP_BATT_MODEL       = 0x68 // battery model number string
	EC_MEMMAP_BATT_SERIAL      = 0x70 // battery serial number string
	EC_MEMMAP_BATT_TYPE        = 0x78 // battery type string
	EC_MEMMAP_NO_ACPI          = 0xe0
)

// Temperature and fan encodings in the memory map.
const (
	EC_TEMP_SENSOR_ENTRIES        = 16
	EC_TEMP_SENSOR_B_ENTRIES      = 8
	EC_TEMP_SENSOR_NOT_PRESENT    = 0xff
	EC_TEMP_SENSOR_ERROR          = 0xfe
	EC_TEMP_SENSOR_NOT_POWERED    = 0xfd
	EC_TEMP_SENSOR_NOT_CALIBRATED = 0xfc
	EC_TEMP_SENSOR_OFFSET         = 200 // kelvin offset of stored values

	EC_FAN_SPEED_ENTRIES     = 4
	EC_FAN_SPEED_NOT_PRESENT = 0xffff
	EC_FAN_SPEED_STALLED     = 0xfffe
)

// Battery bit flags at EC_MEMMAP_BATT_FLAG.
const (
	EC_BATT_FLAG_AC_PRESENT     = 0x01
	EC_BATT_FLAG_BATT_PRESENT   = 0x02
	EC_BATT_FLAG_DISCHARGING    = 0x04
	EC_BATT_FLAG_CHARGING       = 0x08
	EC_BATT_FLAG_LEVEL_CRITICAL = 0x10
)

// Switch flags at EC_MEMMAP_SWITCHES
const (
	EC_SWITCH_LID_OPEN               = 0x01
	EC_SWITCH_POWER_BUTTON_PRESSED   = 0x02
	EC_SWITCH_WRITE_PROTECT_DISABLED = 0x04
	EC_SWITCH_IGNORE1                = 0x08 // unused
	EC_SWITCH_DEDICATED_RECOVERY     = 0x10
	EC_SWITCH_IGNORE0                = 0x20 // unused
)

// Host command interface flags
const (
	// LPC args (LPC interface only)
	EC_HOST_CMD_FLAG_LPC_ARGS_SUPPORTED = 0x01
	EC_HOST_CMD_FLAG_VERSION_3          = 0x02
)

// ACPI commands; valid only on the ACPI command/data port.
const (
	EC_CMD_ACPI_READ          = 0x80
	EC_CMD_ACPI_WRITE         = 0x81
	EC_CMD_ACPI_BURST_ENABLE  = 0x82
	EC_CMD_ACPI_BURST_DISABLE = 0x83
	EC_CMD_ACPI_QUERY_EVENT   = 0x84
)

// ACPI memory space addresses
const (
	EC_ACPI_MEM_VERSION         = 0x00
	EC_ACPI_MEM_TEST            = 0x01
	EC_ACPI_MEM_TEST_COMPLIMENT = 0x02
	EC_ACPI_MEM_MAPPED_BEGIN    = 0x20
	EC_ACPI_MEM_MAPPED_SIZE     = 0xe0
	EC_ACPI_MEM_VERSION_CURRENT = 2
)

// LPC command status byte masks
const (
	EC_LPC_STATUS_TO_HOST     = 0x01 // EC wrote data, host hasn't read it
	EC_LPC_STATUS_FROM_HOST   = 0x02 // host wrote, EC hasn't read it
	EC_LPC_STATUS_PROCESSING  = 0x04
	EC_LPC_STATUS_LAST_CMD    = 0x08
	EC_LPC_STATUS_BURST_MODE  = 0x10
	EC_LPC_STATUS_SCI_PENDING = 0x20
	EC_LPC_STATUS_SMI_PENDING = 0x40
	EC_LPC_STATUS_RESERVED    = 0x80

	EC_LPC_STATUS_BUSY_MASK = EC_LPC_STATUS_FROM_HOST | EC_LPC_STATUS_PROCESSING
)

// Host event codes are 1-based; 0 is "no event pending".
const (
	EC_HOST_EVENT_LID_CLOSED                  = 1
	EC_HOST_EVENT_LID_OPEN                    = 2
	EC_HOST_EVENT_POWER_BUTTON                = 3
	EC_HOST_EVENT_AC_CONNECTED                = 4
	EC_HOST_EVENT_AC_DISCONNECTED             = 5
	EC_HOST_EVENT_BATTERY_LOW                 = 6
	EC_HOST_EVENT_BATTERY_CRITICAL            = 7
	EC_HOST_EVENT_BATTERY                     = 8
	EC_HOST_EVENT_THERMAL_THRESHOLD           = 9
	EC_HOST_EVENT_THERMAL_OVERLOAD            = 10
	EC_HOST_EVENT_THERMAL                     = 11
	EC_HOST_EVENT_USB_CHARGER                 = 12
	EC_HOST_EVENT_KEY_PRESSED                 = 13
	EC_HOST_EVENT_INTERFACE_READY             = 14
	EC_HOST_EVENT_KEYBOARD_RECOVERY           = 15
	EC_HOST_EVENT_THERMAL_SHUTDOWN            = 16
	EC_HOST_EVENT_BATTERY_SHUTDOWN            = 17
	EC_HOST_EVENT_THROTTLE_START              = 18
	EC_HOST_EVENT_THROTTLE_STOP               = 19
	EC_HOST_EVENT_HANG_DETECT                 = 20
	EC_HOST_EVENT_HANG_REBOOT                 = 21
	EC_HOST_EVENT_PD_MCU                      = 22
	EC_HOST_EVENT_BATTERY_STATUS              = 23
	EC_HOST_EVENT_PANIC                       = 24
	EC_HOST_EVENT_KEYBOARD_FASTBOOT           = 25
	EC_HOST_EVENT_RTC                         = 26
	EC_HOST_EVENT_MKBP                        = 27
	EC_HOST_EVENT_USB_MUX                     = 28
	EC_HOST_EVENT_MODE_CHANGE                 = 29
	EC_HOST_EVENT_KEYBOARD_RECOVERY_HW_REINIT = 30
	EC_HOST_EVENT_WOV                         = 31
	// If set, the entire event mask should be considered invalid.
	EC_HOST_EVENT_INVALID = 32
)

// EC_HOST_EVENT_MASK returns the bit of a host event code.
func EC_HOST_EVENT_MASK(code uint) uint64 { return 1 << (code - 1) }

// Flags for HostArgs.Flags
const (
	// Data area at EC_LPC_ADDR_HOST_PARAM contains command params.
	EC_HOST_ARGS_FLAG_FROM_HOST = 0x01
	// Data area at EC_LPC_ADDR_HOST_PARAM contains response.
	EC_HOST_ARGS_FLAG_TO_HOST = 0x02
)

// Parameter length was limited by the LPC interface
const EC_PROTO2_MAX_PARAM_SIZE = 0xfc

// Written to the command port to indicate protocol 3 structs.
const EC_COMMAND_PROTOCOL_3 = 0xda

const (
	EC_HOST_REQUEST_VERSION  = 3
	EC_HOST_RESPONSE_VERSION = 3
)

// Deprecated names of the above.
const (
	EC_HOST_PARAM_SIZE    = EC_PROTO2_MAX_PARAM_SIZE
	EC_LPC_ADDR_OLD_PARAM = EC_HOST_CMD_REGION1
	EC_OLD_PARAM_SIZE     = EC_HOST_CMD_REGION_SIZE
)

// General and test commands
const (
	EC_CMD_PROTO_VERSION     = 0x0000
	EC_CMD_HELLO             = 0x0001
	EC_CMD_GET_VERSION       = 0x0002
	EC_CMD_READ_TEST         = 0x0003
	EC_CMD_GET_BUILD_INFO    = 0x0004
	EC_CMD_GET_CHIP_INFO     = 0x0005
	EC_CMD_GET_BOARD_VERSION = 0x0006
	EC_CMD_READ_MEMMAP       = 0x0007
	EC_CMD_GET_CMD_VERSIONS  = 0x0008
	EC_CMD_GET_COMMS_STATUS  = 0x0009
	EC_CMD_TEST_PROTOCOL     = 0x000a
	EC_CMD_GET_PROTOCOL_INFO = 0x000b
	EC_CMD_GSV_PAUSE_IN_S5   = 0x000c
	EC_CMD_GET_FEATURES      = 0x000d
)

// Flash commands
const (
	EC_CMD_FLASH_INFO    = 0x0010
	EC_CMD_FLASH_READ    = 0x0011
	EC_CMD_FLASH_WRITE   = 0x0012
	EC_CMD_FLASH_ERASE   = 0x0013
	EC_CMD_FLASH_PROTECT = 0x0015
)

// PWM commands
const (
	EC_CMD_PWM_GET_FAN_TARGET_RPM     = 0x0020
	EC_CMD_PWM_SET_FAN_TARGET_RPM     = 0x0021
	EC_CMD_PWM_GET_KEYBOARD_BACKLIGHT = 0x0022
	EC_CMD_PWM_SET_KEYBOARD_BACKLIGHT = 0x0023
	EC_CMD_PWM_SET_FAN_DUTY           = 0x0024
)

const EC_CMD_MOTION_SENSE_CMD = 0x002b

// MKBP, Matrix KeyBoard Protocol
const (
	EC_CMD_MKBP_STATE            = 0x0060
	EC_CMD_MKBP_INFO             = 0x0061
	EC_CMD_MKBP_SIMULATE_KEY     = 0x0062
	EC_CMD_GET_KEYBOARD_ID       = 0x0063
	EC_CMD_MKBP_SET_CONFIG       = 0x0064
	EC_CMD_MKBP_GET_CONFIG       = 0x0065
	EC_CMD_KEYSCAN_SEQ_CTRL      = 0x0066
	EC_CMD_GET_NEXT_EVENT        = 0x0067
	EC_CMD_KEYBOARD_FACTORY_TEST = 0x0068
	EC_CMD_MKBP_WAKE_MASK        = 0x0069
)

// Host event commands
const (
	EC_CMD_HOST_EVENT_GET_B         = 0x0087
	EC_CMD_HOST_EVENT_GET_SMI_MASK  = 0x0088
	EC_CMD_HOST_EVENT_GET_SCI_MASK  = 0x0089
	EC_CMD_HOST_EVENT_SET_SMI_MASK  = 0x008a
	EC_CMD_HOST_EVENT_SET_SCI_MASK  = 0x008b
	EC_CMD_HOST_EVENT_CLEAR         = 0x008c
	EC_CMD_HOST_EVENT_GET_WAKE_MASK = 0x008d
	EC_CMD_HOST_EVENT_SET_WAKE_MASK = 0x008e
	EC_CMD_HOST_EVENT_CLEAR_B       = 0x008f
	EC_CMD_HOST_EVENT               = 0x00a4
)

const (
	EC_CMD_HIBERNATION_DELAY = 0x00a8
	EC_CMD_HOST_SLEEP_EVENT  = 0x00a9
)

const EC_CMD_USB_PD_FW_UPDATE = 0x0110

// EC_CMD_PASSTHRU_OFFSET is the command offset of chained sub-device n.
func EC_CMD_PASSTHRU_OFFSET(n uint16) uint16 { return 0x4000 * n }

// EC_CMD_PASSTHRU_MAX is the highest command number of sub-device n.
func EC_CMD_PASSTHRU_MAX(n uint16) uint16 { return EC_CMD_PASSTHRU_OFFSET(n) + 0x3fff }

const EC_PROTOCOL_INFO_IN_PROGRESS_SUPPORTED = 1 << 0

// Current image, from EC_CMD_GET_VERSION
const (
	EC_IMAGE_UNKNOWN = 0
	EC_IMAGE_RO      = 1
	EC_IMAGE_RW      = 2
	EC_IMAGE_RW_A    = EC_IMAGE_RW
	EC_IMAGE_RO_B    = 3
	EC_IMAGE_RW_B    = 4
)

// Feature codes from EC_CMD_GET_FEATURES
const (
	EC_FEATURE_LIMITED                        = 0
	EC_FEATURE_FLASH                          = 1
	EC_FEATURE_PWM_FAN                        = 2
	EC_FEATURE_PWM_KEYB                       = 3
	EC_FEATURE_LIGHTBAR                       = 4
	EC_FEATURE_LED                            = 5
	EC_FEATURE_MOTION_SENSE                   = 6
	EC_FEATURE_KEYB                           = 7
	EC_FEATURE_PSTORE                         = 8
	EC_FEATURE_PORT80                         = 9
	EC_FEATURE_THERMAL                        = 10
	EC_FEATURE_BKLIGHT_SWITCH                 = 11
	EC_FEATURE_WIFI_SWITCH                    = 12
	EC_FEATURE_HOST_EVENTS                    = 13
	EC_FEATURE_GPIO                           = 14
	EC_FEATURE_I2C                            = 15
	EC_FEATURE_CHARGER                        = 16
	EC_FEATURE_BATTERY                        = 17
	EC_FEATURE_SMART_BATTERY                  = 18
	EC_FEATURE_HANG_DETECT                    = 19
	EC_FEATURE_PMU                            = 20
	EC_FEATURE_SUB_MCU                        = 21
	EC_FEATURE_USB_PD                         = 22
	EC_FEATURE_USB_MUX                        = 23
	EC_FEATURE_MOTION_SENSE_FIFO              = 24
	EC_FEATURE_VSTORE                         = 25
	EC_FEATURE_USBC_SS_MUX_VIRTUAL            = 26
	EC_FEATURE_RTC                            = 27
	EC_FEATURE_FINGERPRINT                    = 28
	EC_FEATURE_TOUCHPAD                       = 29
	EC_FEATURE_RWSIG                          = 30
	EC_FEATURE_DEVICE_EVENT                   = 31
	EC_FEATURE_UNIFIED_WAKE_MASKS             = 32
	EC_FEATURE_HOST_EVENT64                   = 33
	EC_FEATURE_EXEC_IN_RAM                    = 34
	EC_FEATURE_CEC                            = 35
	EC_FEATURE_MOTION_SENSE_TIGHT_TIMESTAMPS  = 36
	EC_FEATURE_REFINED_TABLET_MODE_HYSTERESIS = 37
	EC_FEATURE_SCP                            = 39
	EC_FEATURE_ISH                            = 40
	EC_FEATURE_TYPEC_CMD                      = 41
	EC_FEATURE_TYPEC_REQUIRE_AP_MODE_ENTRY    = 42
	EC_FEATURE_TYPEC_MUX_REQUIRE_AP_ACK       = 43
)

// MKBP event types
const (
	EC_MKBP_EVENT_KEY_MATRIX          = 0
	EC_MKBP_EVENT_HOST_EVENT          = 1
	EC_MKBP_EVENT_SENSOR_FIFO         = 2
	EC_MKBP_EVENT_BUTTON              = 3
	EC_MKBP_EVENT_SWITCH              = 4
	EC_MKBP_EVENT_FINGERPRINT         = 5
	EC_MKBP_EVENT_SYSRQ               = 6
	EC_MKBP_EVENT_HOST_EVENT64        = 7
	EC_MKBP_EVENT_CEC_EVENT           = 8
	EC_MKBP_EVENT_CEC_MESSAGE         = 9
	EC_MKBP_EVENT_DP_ALT_MODE_ENTERED = 10
	EC_MKBP_EVENT_ONLINE_CALIBRATION  = 11
	EC_MKBP_EVENT_PCHG                = 12
	EC_MKBP_EVENT_COUNT               = 13
)

const (
	EC_MKBP_HAS_MORE_EVENTS_SHIFT = 7
	EC_MKBP_HAS_MORE_EVENTS       = 1 << EC_MKBP_HAS_MORE_EVENTS_SHIFT
	EC_MKBP_EVENT_TYPE_MASK       = EC_MKBP_HAS_MORE_EVENTS - 1
)

var EC_MKBP_EVENT_TEXT = [EC_MKBP_EVENT_COUNT]string{
	EC_MKBP_EVENT_KEY_MATRIX:          "KEY_MATRIX",
	EC_MKBP_EVENT_HOST_EVENT:          "HOST_EVENT",
	EC_MKBP_EVENT_SENSOR_FIFO:         "SENSOR_FIFO",
	EC_MKBP_EVENT_BUTTON:              "BUTTON",
	EC_MKBP_EVENT_SWITCH:              "SWITCH",
	EC_MKBP_EVENT_FINGERPRINT:         "FINGERPRINT",
	EC_MKBP_EVENT_SYSRQ:               "SYSRQ",
	EC_MKBP_EVENT_HOST_EVENT64:        "HOST_EVENT64",
	EC_MKBP_EVENT_CEC_EVENT:           "CEC_EVENT",
	EC_MKBP_EVENT_CEC_MESSAGE:         "CEC_MESSAGE",
	EC_MKBP_EVENT_DP_ALT_MODE_ENTERED: "DP_ALT_MODE_ENTERED",
	EC_MKBP_EVENT_ONLINE_CALIBRATION:  "ONLINE_CALIBRATION",
	EC_MKBP_EVENT_PCHG:                "PCHG",
}

// Buttons and switches reported by MKBP
const (
	EC_MKBP_POWER_BUTTON = 0
	EC_MKBP_VOL_UP       = 1
	EC_MKBP_VOL_DOWN     = 2
	EC_MKBP_RECOVERY     = 3

	EC_MKBP_LID_OPEN        = 0
	EC_MKBP_TABLET_MODE     = 1
	EC_MKBP_BASE_ATTACHED   = 2
	EC_MKBP_FRONT_PROXIMITY = 3
)

// Host event actions and mask types for EC_CMD_HOST_EVENT
const (
	EC_HOST_EVENT_GET = iota
	EC_HOST_EVENT_SET
	EC_HOST_EVENT_CLEAR
)

const (
	EC_HOST_EVENT_MAIN = iota
	EC_HOST_EVENT_B
	EC_HOST_EVENT_SCI_MASK
	EC_HOST_EVENT_SMI_MASK
	EC_HOST_EVENT_ALWAYS_REPORT_MASK
	EC_HOST_EVENT_ACTIVE_WAKE_MASK
	EC_HOST_EVENT_LAZY_WAKE_MASK_S0IX
	EC_HOST_EVENT_LAZY_WAKE_MASK_S3
	EC_HOST_EVENT_LAZY_WAKE_MASK_S5
)

// MKBP info types and wake mask actions
const (
	EC_MKBP_INFO_KBD       = 0
	EC_MKBP_INFO_SUPPORTED = 1
	EC_MKBP_INFO_CURRENT   = 2

	GET_WAKE_MASK = 0
	SET_WAKE_MASK = 1

	EC_MKBP_HOST_EVENT_WAKE_MASK = 0
	EC_MKBP_EVENT_WAKE_MASK      = 1
)

const (
	KEYBOARD_ID_UNSUPPORTED = 0
	KEYBOARD_ID_UNREADABLE  = 0xffffffff
)
